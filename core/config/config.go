package config

import (
	_ "embed"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"sigs.k8s.io/yaml"
)

//go:embed default/config.yaml
var defaultConfigData []byte

// ConfigurationName is the file read from the configuration directory.
const ConfigurationName = "config.yaml"

// Configuration holds the interpreter's settings. The zero value is
// not valid; start from Default.
type Configuration struct {
	Shell Shell `json:"shell"`
}

// Shell configures the interactive surface. None of it changes command
// semantics.
type Shell struct {
	// Name prefixes diagnostics and the prompt.
	Name string `json:"name" validate:"required"`
	// Prompt is the text shown after Name when input is a terminal.
	Prompt string `json:"prompt" validate:"required"`
	// Color styles the prompt when enabled.
	Color bool `json:"color"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

// Default returns the embedded default configuration.
func Default() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
