// Package inputs resolves the action's configuration from the process
// environment.
//
// The set of inputs, their defaults and whether they are required are
// declared once in action.yml. The Actions runner reads that file to
// populate INPUT_<NAME> variables; this package parses the same file
// (embedded in the binary) with gopkg.in/yaml.v3 and uses it as the schema
// when reading those variables back.
package inputs
