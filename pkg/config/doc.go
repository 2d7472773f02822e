// Package config parses and validates the deployment-gate configuration.
//
// Raw configuration arrives as a loosely typed mapping, either straight from the
// release orchestrator or from a .precheck.toml/.precheck.yaml file loaded with
// Load. Parse turns it into a GateConfig. The optional [policy] section of a
// config file controls defaults that differ between setups, such as whether a
// gate is mandatory.
package config
