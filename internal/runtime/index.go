package runtime

import "math/big"

// indexInt extracts the 1-based (or nonpositive) integer an Index/Store
// expression's index value must resolve to; string keys are handled by
// the caller since they only apply to dicts.
func indexInt(v Value) (int, bool) {
	if v.Kind != KindNum {
		return 0, false
	}
	if !v.Num.IsInt() {
		return 0, false
	}
	return int(v.Num.Num().Int64()), true
}

// Index reads container[idx] (spec §4.6 "Indexing"). idx may be a number
// (1-based list index, routed through negIdx when nonpositive) or a
// string (dict key).
func (rt *Machine) Index(container, idxVal Value) (Value, error) {
	if idxVal.Kind == KindStr {
		if container.Kind != KindDict {
			return Value{}, &WenyanFault{Name: "索引非法", Msg: "以言索物外之值"}
		}
		v, ok := container.Dict.Get(idxVal.Str)
		if !ok {
			return Null, nil
		}
		return v, nil
	}
	if container.Kind != KindList {
		return Value{}, &WenyanFault{Name: "索引非法", Msg: "以數索列外之值"}
	}
	n, ok := indexInt(idxVal)
	if !ok {
		return Value{}, &WenyanFault{Name: "索引非法", Msg: "索引非整數"}
	}
	if n <= 0 {
		v, ok := rt.NegIdx.Get(container.List, n)
		if !ok {
			return Null, nil
		}
		return v, nil
	}
	if n > len(container.List.Items) {
		return Null, nil
	}
	return container.List.Items[n-1], nil
}

// Store writes container[idx] = v (positive indices pad the list with
// null up to the target length; spec §4.6 "Assignment to a list index
// beyond the list's length pads with nulls to that length before
// writing").
func (rt *Machine) Store(container, idxVal, v Value) error {
	if idxVal.Kind == KindStr {
		if container.Kind != KindDict {
			return &WenyanFault{Name: "索引非法", Msg: "以言索物外之值"}
		}
		container.Dict.Set(idxVal.Str, v)
		return nil
	}
	if container.Kind != KindList {
		return &WenyanFault{Name: "索引非法", Msg: "以數索列外之值"}
	}
	n, ok := indexInt(idxVal)
	if !ok {
		return &WenyanFault{Name: "索引非法", Msg: "索引非整數"}
	}
	if n <= 0 {
		rt.NegIdx.Set(container.List, n, v)
		return nil
	}
	for len(container.List.Items) < n {
		container.List.Items = append(container.List.Items, Null)
	}
	container.List.Items[n-1] = v
	return nil
}

// Delete removes container[idx] (昔之…之idx者。今不復存矣): out-of-range
// positive indices and absent negIdx entries are no-ops.
func (rt *Machine) Delete(container, idxVal Value) error {
	if idxVal.Kind == KindStr {
		if container.Kind != KindDict {
			return &WenyanFault{Name: "索引非法", Msg: "以言索物外之值"}
		}
		if _, ok := container.Dict.Vals[idxVal.Str]; ok {
			delete(container.Dict.Vals, idxVal.Str)
			for i, k := range container.Dict.Keys {
				if k == idxVal.Str {
					container.Dict.Keys = append(container.Dict.Keys[:i], container.Dict.Keys[i+1:]...)
					break
				}
			}
		}
		return nil
	}
	if container.Kind != KindList {
		return &WenyanFault{Name: "索引非法", Msg: "以數索列外之值"}
	}
	n, ok := indexInt(idxVal)
	if !ok {
		return &WenyanFault{Name: "索引非法", Msg: "索引非整數"}
	}
	if n <= 0 {
		rt.NegIdx.Delete(container.List, n)
		return nil
	}
	if n > len(container.List.Items) {
		return nil
	}
	container.List.Items = append(container.List.Items[:n-1], container.List.Items[n:]...)
	return nil
}

// Length is 之長: a list's element count, a dict's key count, a string's
// rune count.
func (rt *Machine) Length(v Value) Value {
	switch v.Kind {
	case KindList:
		return Num(new(big.Rat).SetInt64(int64(len(v.List.Items))))
	case KindDict:
		return Num(new(big.Rat).SetInt64(int64(len(v.Dict.Keys))))
	case KindStr:
		return Num(new(big.Rat).SetInt64(int64(len([]rune(v.Str)))))
	default:
		return Num(new(big.Rat))
	}
}
