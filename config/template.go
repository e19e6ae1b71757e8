package config

import (
	"bytes"
	"encoding/json"
	"strings"
	"text/template"

	"github.com/lithammer/dedent"
)

var moduleTemplate = template.Must(template.New("t.config.ts").Parse(
	strings.TrimLeft(dedent.Dedent(`
		import { AllLanguages } from "@nuclenergy/t";
		import { TConfig } from "@nuclenergy/t/tconfig";

		const config = {{ .Value }} as const satisfies TConfig;

		export type Language = AllLanguages<typeof config>;

		export default config;
	`), "\n"),
))

// scriptTemplate renders cfg as a TypeScript configuration module that
// package script can read back.
func scriptTemplate(cfg Config) ([]byte, error) {
	value, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	err = moduleTemplate.Execute(&buf, struct{ Value string }{string(value)})

	return buf.Bytes(), err
}
