/*
Package req parses the payload of an HTTP request into a struct.

[Parser.ParseBody] decodes JSON bodies and [Parser.ParseValues] query params or form values
into a pointer to a struct, whose "json" or "schema" struct tags match keys in the payload
and whose "validate" struct tags set the rules the data must meet.
The "enum" rule accepts any [Enumerable], like burrow.Environment.

Failing rules return ValidationErrors, which wrap burrow.ErrNotValid;
a router responds to them with 400 Bad Request.
*/
package req
