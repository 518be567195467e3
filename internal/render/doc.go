// Package render isolates browser automation behind a small interface.
//
// The archive site builds its pages with JavaScript, so plain HTTP GETs
// return an empty shell; a real rendering engine has to execute the page
// before the resolvers can read it. Everything above this package talks
// to the Renderer interface only, which keeps the resolvers and the
// discovery orchestrator testable against canned markup and independent
// of which engine does the rendering.
//
// The production implementation drives headless Chrome via chromedp.
// The browser is treated as a single exclusively-owned resource: one
// engine instance, one active page, with detail pages opened in a
// transient isolated tab that is closed before the next one opens.
package render
