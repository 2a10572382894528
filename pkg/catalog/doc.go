// Package catalog models the table definitions the host engine hands to
// connector factories: identifiers, logical types, columns and key
// constraints, plus their projection onto Arrow schemas.
package catalog
