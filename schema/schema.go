// Package schema has the models and constants shared by all parts of heatgate.
package schema
