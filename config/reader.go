package config

import (
	"errors"
	"fmt"

	"github.com/samber/mo"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// ErrUnset is returned when a key has neither a value nor a default.
var ErrUnset = errors.New("config key not set")

// Reader is the read-only view of configuration handed to sessions.
// Every read may fail; callers decide what a failure means.
type Reader interface {
	Bool(key string) mo.Result[bool]
	Int(key string) mo.Result[int]
	String(key string) mo.Result[string]
	Strings(key string) mo.Result[[]string]
}

// Viper reads from the global viper instance.
func Viper() Reader {
	return viperReader{v: viper.GetViper()}
}

type viperReader struct {
	v *viper.Viper
}

func (r viperReader) Bool(key string) mo.Result[bool] {
	return read(r.v, key, cast.ToBoolE)
}

func (r viperReader) Int(key string) mo.Result[int] {
	return read(r.v, key, cast.ToIntE)
}

func (r viperReader) String(key string) mo.Result[string] {
	return read(r.v, key, cast.ToStringE)
}

func (r viperReader) Strings(key string) mo.Result[[]string] {
	return read(r.v, key, cast.ToStringSliceE)
}

func read[T any](v *viper.Viper, key string, convert func(any) (T, error)) (result mo.Result[T]) {
	defer func() {
		if p := recover(); p != nil {
			result = mo.Err[T](fmt.Errorf("read %s: %v", key, p))
		}
	}()

	if !v.IsSet(key) {
		return mo.Err[T](fmt.Errorf("%w: %s", ErrUnset, key))
	}

	value, err := convert(v.Get(key))
	if err != nil {
		return mo.Err[T](fmt.Errorf("read %s: %w", key, err))
	}
	return mo.Ok(value)
}

// Map is a static Reader, handy for tests and embedding.
// A value of type error makes reads of its key fail with that error.
type Map map[string]any

func (m Map) Bool(key string) mo.Result[bool]        { return lookup(m, key, cast.ToBoolE) }
func (m Map) Int(key string) mo.Result[int]          { return lookup(m, key, cast.ToIntE) }
func (m Map) String(key string) mo.Result[string]    { return lookup(m, key, cast.ToStringE) }
func (m Map) Strings(key string) mo.Result[[]string] { return lookup(m, key, cast.ToStringSliceE) }

func lookup[T any](m Map, key string, convert func(any) (T, error)) mo.Result[T] {
	value, ok := m[key]
	if !ok {
		return mo.Err[T](fmt.Errorf("%w: %s", ErrUnset, key))
	}

	if err, ok := value.(error); ok {
		return mo.Err[T](fmt.Errorf("read %s: %w", key, err))
	}

	converted, err := convert(value)
	if err != nil {
		return mo.Err[T](fmt.Errorf("read %s: %w", key, err))
	}
	return mo.Ok(converted)
}
