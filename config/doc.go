// Package config holds the record a new table is generated from and loads
// the tool configuration.
//
// [Table] is a plain value: every With method returns a modified copy, so a
// record cannot change after it has been validated.
//
//	cfg, err := config.NewTable(config.Default().WithSize(3, 4).
//	    WithHeaderColors("Light Green", "Gray"))
//
// [Load] layers defaults, gridtable.yaml, GRIDTABLE_ environment variables
// and command-line flags, in increasing precedence.
package config
