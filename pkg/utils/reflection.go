package utils

import "reflect"

// CloneInterface takes an object and returns a copy of it regardless of
// whether it is really a pointer underneath or not.  It is roughly equivalent
// to the following:
// b = *a  (if 'a' is a pointer)
// b = a (if 'a' is not a pointer)
func CloneInterface(a interface{}) interface{} {
	va := reflect.ValueOf(a)
	indirect := reflect.Indirect(va)
	clone := reflect.New(indirect.Type())
	clone.Elem().Set(reflect.ValueOf(indirect.Interface()))
	if va.Kind() == reflect.Ptr {
		return clone.Interface()
	}
	return clone.Elem().Interface()
}

// FindFieldWithEmbeddedStructs will look for a field with the given name,
// recursing down into embedded structs if there are any.
func FindFieldWithEmbeddedStructs(st interface{}, name string, typ reflect.Type) reflect.Value {
	instanceValue := reflect.Indirect(reflect.ValueOf(st))
	if instanceValue.Kind() != reflect.Struct {
		return reflect.Value{}
	}
	fieldValue := instanceValue.FieldByName(name)

	if fieldValue.IsValid() && fieldValue.Type() == typ {
		return fieldValue
	}

	for i := 0; i < instanceValue.Type().NumField(); i++ {
		field := instanceValue.Type().Field(i)
		if field.Type.Kind() != reflect.Struct || !field.Anonymous || !instanceValue.Field(i).CanSet() {
			continue
		}
		if v := FindFieldWithEmbeddedStructs(instanceValue.Field(i).Addr().Interface(), name, typ); v.IsValid() {
			return v
		}
	}
	return reflect.Value{}
}
