package config

import (
	"reflect"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/signalfx/defaults"
	log "github.com/sirupsen/logrus"
	yaml "gopkg.in/yaml.v2"
)

// DecodeExtraConfig pulls out the OtherConfig values from the core monitor
// config and decodes them to the monitor-specific struct `out`, which must
// embed MonitorConfig.  Keys that do not map to a field of `out` are an
// error since the user provided config that would never be used.  Defaults
// are applied afterwards.
func DecodeExtraConfig(in *MonitorConfig, out MonitorCustomConfig) error {
	otherYaml, err := yaml.Marshal(in.OtherConfig)
	if err != nil {
		return err
	}

	if err := yaml.UnmarshalStrict(otherYaml, out); err != nil {
		log.WithFields(log.Fields{
			"monitorType": in.Type,
			"otherConfig": spew.Sdump(in.OtherConfig),
			"error":       err,
		}).Error("Invalid monitor-specific configuration")
		return errors.Wrapf(err, "invalid config for monitor %s", in.Type)
	}

	core := reflect.Indirect(reflect.ValueOf(out)).FieldByName("MonitorConfig")
	if !core.IsValid() || core.Type() != reflect.TypeOf(MonitorConfig{}) {
		return errors.Errorf("config type %T does not embed MonitorConfig", out)
	}
	core.Set(reflect.ValueOf(*in))

	if err := defaults.Set(out); err != nil {
		return errors.Wrapf(err, "could not set defaults on config for monitor %s", in.Type)
	}
	return nil
}

// CallConfigure will call the Configure method on a monitor with a `conf`
// object, typed to the correct type.  This allows monitors to set the type of
// the config object to their own config and not have to worry about casting
// or converting.
func CallConfigure(instance, conf interface{}) error {
	instanceVal := reflect.ValueOf(instance)
	confVal := reflect.ValueOf(conf)

	method := instanceVal.MethodByName("Configure")
	if !method.IsValid() {
		return errors.Errorf("no Configure method found on %T", instance)
	}

	if method.Type().NumIn() != 1 {
		return errors.Errorf("Configure method on %T should take exactly one argument", instance)
	}

	if method.Type().In(0) != confVal.Type() {
		return errors.Errorf("Configure method on %T takes %s, not %s", instance,
			method.Type().In(0), confVal.Type())
	}

	errorIface := reflect.TypeOf((*error)(nil)).Elem()
	if method.Type().NumOut() != 1 || !method.Type().Out(0).Implements(errorIface) {
		return errors.Errorf("Configure method on %T should return an error", instance)
	}

	ret := method.Call([]reflect.Value{confVal})[0]
	if ret.IsNil() {
		return nil
	}
	return ret.Interface().(error)
}
