// Package todo defines the task record and its row representation.
//
// A task is stored as one CSV row under the header
//
//	id,name,finished,created_at
//
// with these encodings:
//
//   - id: base-10 integer
//   - name: free text
//   - finished: "Y" or "N"
//   - created_at: "YYYY-MM-DD HH:MM:SS", 24-hour clock, local time
//
// # Decoding
//
// FromRow fails with a *ParseError when id is not an integer or created_at
// does not match TimeLayout. Any finished value other than "Y" decodes as
// false.
//
// # Validation
//
// ValidateRows checks raw rows against RowSchema (JSON Schema draft-2020-12)
// and reports duplicate IDs. It collects every problem instead of stopping at
// the first one, which makes it suitable for diagnosing a damaged file.
package todo
