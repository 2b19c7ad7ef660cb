// internal/record/doc.go

/*
Package record provides the in-memory representation of STEP entity records:
their numeric identifiers, their parsed arguments and the table that owns them.

An identifier has the canonical textual form `#<digits>`, e.g. `#42`. This
package centralizes parsing and formatting of that form so that no other
package ever handles raw reference syntax.

Records are created once by the stepfile recordizer and are immutable
afterwards. Rewrites (such as the relationship shortcut in refgraph) produce
new records through WithExtraArg and a new table through Table.Replace.
*/
package record
