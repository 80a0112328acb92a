// Package markup converts between tag markup such as
//
//	<gold>Welcome, <bold><name></bold>! <click:run_command:/spawn>[spawn]</click></gold>
//
// and a Document, an ordered list of Spans that each carry a color,
// decorations, and optional click and hover actions.
//
// Parse and Serialize are inverses up to equivalence: Parse(Serialize(d))
// yields the same spans as d, although the markup may differ from whatever d
// was parsed from. Escape, Strip and Substitute work on raw markup and never
// fail.
package markup
