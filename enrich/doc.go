// Package enrich classifies raw law sections before indexing. It assigns a
// category, crime type, and severity from an ordered rule table, and extracts
// ranked keywords from the section text. Rules ship embedded in the binary
// and can be swapped out for testing or jurisdiction-specific tables.
package enrich
