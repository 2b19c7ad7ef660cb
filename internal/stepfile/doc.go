/*
Package stepfile turns the text of an ISO 10303-21 exchange file into entity
records.

Reading happens in three steps:

 1. Physical lines are buffered into logical statements, one per `;` found
    outside a quoted string. Comments are removed and carriage returns
    ignored. See splitStatements.
 2. Statements that do not start with `#` (the header section, `DATA;`,
    `ENDSEC;`) are discarded.
 3. Each remaining statement is parsed by a participle grammar into either a
    simple instance `#1=NAME(args)` or a complex instance `#1=(A(x)B(y))`.
    Complex instances collapse into one record whose type names keep their
    order of appearance and whose arguments are concatenated.

A statement that fails to parse is dropped and counted; it never aborts the
read.
*/
package stepfile
