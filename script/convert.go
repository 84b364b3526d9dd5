package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// mapToTable converts a Go map to a Lua table.
func mapToTable(L *lua.LState, data map[string]any) *lua.LTable {
	tbl := L.NewTable()
	for k, v := range data {
		tbl.RawSetString(k, toLValue(L, v))
	}
	return tbl
}

// tableToMap converts a Lua table to a Go map. Non-string keys are
// rendered as strings.
func tableToMap(tbl *lua.LTable) map[string]any {
	result := make(map[string]any)
	tbl.ForEach(func(key, value lua.LValue) {
		var k string
		switch kv := key.(type) {
		case lua.LString:
			k = string(kv)
		case lua.LNumber:
			k = fmt.Sprintf("%v", float64(kv))
		default:
			k = key.String()
		}
		result[k] = fromLValue(value)
	})
	return result
}

// toLValue converts a Go value to a Lua value.
func toLValue(L *lua.LState, v any) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(val)
	case int:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case string:
		return lua.LString(val)
	case []any:
		tbl := L.NewTable()
		for i, item := range val {
			tbl.RawSetInt(i+1, toLValue(L, item))
		}
		return tbl
	case map[string]any:
		return mapToTable(L, val)
	default:
		return lua.LString(fmt.Sprintf("%v", val))
	}
}

// fromLValue converts a Lua value to a Go value. Array-like tables
// become slices, other tables become maps, numbers become float64.
func fromLValue(v lua.LValue) any {
	if v == nil || v == lua.LNil {
		return nil
	}

	switch val := v.(type) {
	case lua.LBool:
		return bool(val)
	case lua.LNumber:
		return float64(val)
	case lua.LString:
		return string(val)
	case *lua.LTable:
		isArray := true
		maxIdx := 0
		val.ForEach(func(k, _ lua.LValue) {
			if num, ok := k.(lua.LNumber); ok {
				if idx := int(num); idx > maxIdx {
					maxIdx = idx
				}
			} else {
				isArray = false
			}
		})

		if isArray && maxIdx > 0 {
			arr := make([]any, maxIdx)
			val.ForEach(func(k, item lua.LValue) {
				if num, ok := k.(lua.LNumber); ok {
					if idx := int(num) - 1; idx >= 0 && idx < maxIdx {
						arr[idx] = fromLValue(item)
					}
				}
			})
			return arr
		}

		result := make(map[string]any)
		val.ForEach(func(k, item lua.LValue) {
			var key string
			switch kv := k.(type) {
			case lua.LString:
				key = string(kv)
			case lua.LNumber:
				key = fmt.Sprintf("%v", float64(kv))
			default:
				key = k.String()
			}
			result[key] = fromLValue(item)
		})
		return result
	default:
		return v.String()
	}
}
