// Copyright 2024 The datalect Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package record

// Blacklist returns a Filter that rejects every record whose value for the
// named field is one of values.
func Blacklist(field string, values ...interface{}) Filter {
	set := make(map[interface{}]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return func(rec Record) (Record, error) {
		if _, ok := set[rec[field]]; ok {
			return nil, nil
		}
		return rec, nil
	}
}

// Whitelist returns a Filter that rejects every record whose value for the
// named field is not one of values.
func Whitelist(field string, values ...interface{}) Filter {
	set := make(map[interface{}]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return func(rec Record) (Record, error) {
		if _, ok := set[rec[field]]; !ok {
			return nil, nil
		}
		return rec, nil
	}
}
