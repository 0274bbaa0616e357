// Package catalog builds a named set of linked templating.Templates from a
// YAML or JSON document and encodes their resolved output. Bindings refer
// either to literal text or, by name, to another template of the same
// catalog, in any order. Cyclic catalogs are rejected when built.
package catalog
