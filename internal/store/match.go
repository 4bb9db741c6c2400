package store

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Match reports whether doc satisfies filter. It understands the subset of
// the MongoDB query language the back-office issues: implicit equality,
// $eq $ne $gt $gte $lt $lte $in $nin $exists $regex/$options, $or and $and,
// and dotted paths into embedded documents.
func Match(doc bson.M, filter bson.M) (bool, error) {
	for key, cond := range filter {
		switch key {
		case "$or", "$and":
			clauses, err := toFilters(cond)
			if err != nil {
				return false, err
			}
			ok, err := matchClauses(doc, clauses, key == "$or")
			if err != nil || !ok {
				return false, err
			}
			continue
		}

		value, found := lookup(doc, key)
		ops, isOps := operatorDoc(cond)
		if !isOps {
			if !found || !equalOrContains(value, cond) {
				return false, nil
			}
			continue
		}
		for op, arg := range ops {
			ok, err := applyOperator(op, arg, value, found, ops)
			if err != nil || !ok {
				return false, err
			}
		}
	}
	return true, nil
}

func matchClauses(doc bson.M, clauses []bson.M, or bool) (bool, error) {
	for _, clause := range clauses {
		ok, err := Match(doc, clause)
		if err != nil {
			return false, err
		}
		if or && ok {
			return true, nil
		}
		if !or && !ok {
			return false, nil
		}
	}
	return !or, nil
}

func applyOperator(op string, arg, value interface{}, found bool, ops bson.M) (bool, error) {
	switch op {
	case "$eq":
		return found && equalOrContains(value, arg), nil
	case "$ne":
		return !found || !equalOrContains(value, arg), nil
	case "$gt", "$gte", "$lt", "$lte":
		if !found {
			return false, nil
		}
		c, ok := compare(value, arg)
		if !ok {
			return false, nil
		}
		switch op {
		case "$gt":
			return c > 0, nil
		case "$gte":
			return c >= 0, nil
		case "$lt":
			return c < 0, nil
		default:
			return c <= 0, nil
		}
	case "$in", "$nin":
		hit := false
		if found {
			for _, candidate := range toSlice(arg) {
				if equalOrContains(value, candidate) {
					hit = true
					break
				}
			}
		}
		if op == "$in" {
			return hit, nil
		}
		return !hit, nil
	case "$exists":
		want, _ := arg.(bool)
		return found == want, nil
	case "$regex":
		s, ok := value.(string)
		if !found || !ok {
			return false, nil
		}
		pattern := fmt.Sprint(arg)
		if opts, _ := ops["$options"].(string); strings.Contains(opts, "i") {
			pattern = "(?i)" + pattern
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return false, fmt.Errorf("invalid $regex %q: %w", arg, err)
		}
		return re.MatchString(s), nil
	case "$options":
		return true, nil
	default:
		return false, fmt.Errorf("unsupported query operator %s", op)
	}
}

func operatorDoc(cond interface{}) (bson.M, bool) {
	var m bson.M
	switch v := cond.(type) {
	case bson.M:
		m = v
	case map[string]interface{}:
		m = bson.M(v)
	default:
		return nil, false
	}
	if len(m) == 0 {
		return nil, false
	}
	for k := range m {
		if !strings.HasPrefix(k, "$") {
			return nil, false
		}
	}
	return m, true
}

func toFilters(v interface{}) ([]bson.M, error) {
	var out []bson.M
	for _, item := range toSlice(v) {
		switch f := item.(type) {
		case bson.M:
			out = append(out, f)
		case map[string]interface{}:
			out = append(out, bson.M(f))
		default:
			return nil, fmt.Errorf("logical operator expects documents, got %T", item)
		}
	}
	return out, nil
}

func lookup(doc bson.M, path string) (interface{}, bool) {
	var current interface{} = doc
	for _, part := range strings.Split(path, ".") {
		var m bson.M
		switch v := current.(type) {
		case bson.M:
			m = v
		case map[string]interface{}:
			m = bson.M(v)
		case bson.D:
			m = v.Map()
		default:
			return nil, false
		}
		next, ok := m[part]
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// equalOrContains follows MongoDB array semantics: a scalar condition matches
// an array field when any element equals it.
func equalOrContains(value, cond interface{}) bool {
	if equal(value, cond) {
		return true
	}
	if arr, ok := value.(primitive.A); ok {
		for _, el := range arr {
			if equal(el, cond) {
				return true
			}
		}
	}
	return false
}

func equal(a, b interface{}) bool {
	a, b = normalize(a), normalize(b)
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if c, ok := compare(a, b); ok {
		return c == 0
	}
	if ab, ok := a.(bool); ok {
		bb, ok := b.(bool)
		return ok && ab == bb
	}
	return reflect.DeepEqual(a, b)
}

func compare(a, b interface{}) (int, bool) {
	a, b = normalize(a), normalize(b)
	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		if !ok {
			return 0, false
		}
		switch {
		case av < bv:
			return -1, true
		case av > bv:
			return 1, true
		}
		return 0, true
	case time.Time:
		bv, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		return av.Compare(bv), true
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(av, bv), true
	}
	return 0, false
}

func normalize(v interface{}) interface{} {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case float32:
		return float64(x)
	case primitive.DateTime:
		return x.Time().UTC()
	case time.Time:
		// BSON datetimes carry millisecond precision.
		return x.UTC().Truncate(time.Millisecond)
	case primitive.Null:
		return nil
	}
	return v
}

func toSlice(v interface{}) []interface{} {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}
	out := make([]interface{}, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// Select evaluates filter and opts over raw documents in memory. Backends
// without native query support share it.
func Select(raws []bson.Raw, filter bson.M, opts FindOptions) ([]bson.Raw, error) {
	type entry struct {
		raw bson.Raw
		doc bson.M
	}
	matched := make([]entry, 0, len(raws))
	for _, raw := range raws {
		var doc bson.M
		if err := bson.Unmarshal(raw, &doc); err != nil {
			return nil, err
		}
		ok, err := Match(doc, filter)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, entry{raw: raw, doc: doc})
		}
	}

	if len(opts.Sort) > 0 {
		sort.SliceStable(matched, func(i, j int) bool {
			for _, field := range opts.Sort {
				c := compareField(matched[i].doc, matched[j].doc, field.Field)
				if c == 0 {
					continue
				}
				if field.Desc {
					return c > 0
				}
				return c < 0
			}
			return false
		})
	}

	start := 0
	if opts.Skip > 0 {
		start = len(matched)
		if opts.Skip < int64(start) {
			start = int(opts.Skip)
		}
	}
	end := len(matched)
	if opts.Limit > 0 && opts.Limit < int64(end-start) {
		end = start + int(opts.Limit)
	}
	out := make([]bson.Raw, 0, end-start)
	for _, e := range matched[start:end] {
		out = append(out, e.raw)
	}
	return out, nil
}

// compareField orders missing values before present ones, as MongoDB does.
func compareField(a, b bson.M, field string) int {
	av, aok := lookup(a, field)
	bv, bok := lookup(b, field)
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return -1
	case !bok:
		return 1
	}
	c, _ := compare(av, bv)
	return c
}

// ApplySet returns raw with set merged over its top-level fields.
func ApplySet(raw bson.Raw, set bson.M) (bson.Raw, error) {
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	for k, v := range set {
		doc[k] = v
	}
	return bson.Marshal(doc)
}

// DocumentID reads the "id" field of a raw document.
func DocumentID(raw bson.Raw) string {
	value, err := raw.LookupErr("id")
	if err != nil {
		return ""
	}
	id, _ := value.StringValueOK()
	return id
}
