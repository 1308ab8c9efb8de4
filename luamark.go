// Package luamark exposes a GitHub-Flavored-Markdown to HTML converter to
// embedded Lua scripts. It translates loosely-typed option records coming
// from a script into strongly-typed render options and hands the work to an
// external Markdown renderer.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goldmark/, gopherlua/, slog/).
package luamark
