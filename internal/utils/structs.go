package utils

import (
	"fmt"
	"reflect"
	"strings"
)

// ColumnTag is the struct tag that names a database column.
const ColumnTag = "db"

// Columns lists the column names tagged on a struct, in field order.
func Columns(input any) []string {
	var columns []string
	eachColumn(input, func(column string, _ reflect.Value) {
		columns = append(columns, column)
	})
	return columns
}

// ColumnMap maps each tagged column of a struct to its field value, ready for
// an insert or update builder.
func ColumnMap(input any) map[string]any {
	values := make(map[string]any)
	eachColumn(input, func(column string, field reflect.Value) {
		values[column] = field.Interface()
	})
	return values
}

func eachColumn(input any, fn func(column string, field reflect.Value)) {
	v := reflect.Indirect(reflect.ValueOf(input))
	if v.Kind() != reflect.Struct {
		panic(fmt.Sprintf("utils: expected struct or pointer to struct, got %T", input))
	}

	t := v.Type()
	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		column, _, _ := strings.Cut(field.Tag.Get(ColumnTag), ",")
		if column == "" || column == "-" {
			continue
		}

		fn(column, v.Field(i))
	}
}

// WrapError annotates err with msg. A nil err stays nil.
func WrapError(err error, msg string) error {
	if err == nil || msg == "" {
		return err
	}
	return fmt.Errorf("%s: %w", msg, err)
}
