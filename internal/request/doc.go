// Package request extracts engine inputs from the shapes callers send them
// in: a JSON body, a raw text body, or form/query values.
//
// Extraction only locates values. It reports a ValidationError when a
// required value is absent and leaves every other judgment to the engines.
// The extracted values are kept as raw IR so that a journaled request can be
// decoded again and re-evaluated byte for byte.
package request
