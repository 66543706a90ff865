package utils

import (
	"reflect"
)

/**
将from的值复制到to
如果from不为空，则将值复制到to
*/
func CopyValue(to interface{}, from interface{}, emp func(interface{}) bool) {
	toElem := reflect.ValueOf(to).Elem()

	fromElem := reflect.ValueOf(from).Elem()
	fromType := fromElem.Type()

	for i := 0; i < fromElem.NumField(); i++ {
		formField := fromElem.Field(i)
		if !formField.CanInterface() {
			continue
		}
		if !emp(formField.Interface()) {
			toField := toElem.FieldByName(fromType.Field(i).Name)
			if toField.CanSet() {
				toField.Set(formField)
			}
		}
	}
}

/**
将from的值复制到to
如果to的值为空，则从from读取值
*/
func CopyValue2(to interface{}, from interface{}, emp func(interface{}) bool) {
	toElem := reflect.ValueOf(to).Elem()
	toType := toElem.Type()

	fromElem := reflect.ValueOf(from).Elem()

	for i := 0; i < toElem.NumField(); i++ {
		toField := toElem.Field(i)
		filedName := toType.Field(i).Name

		if toField.CanSet() && toField.CanInterface() {
			if emp(toField.Interface()) {
				fromFiled := fromElem.FieldByName(filedName)
				if fromFiled.IsValid() {
					toField.Set(fromFiled)
				}
			}
		}
	}
}

/**
判断值是否为空(零值, 空切片, 空map)
*/
func EmpValue(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	}
	return v.IsZero()
}
