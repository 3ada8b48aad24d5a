// Package mdorg converts Markdown to Org markup, incrementally.
//
// The package is built for producers that emit Markdown progressively, such
// as a language model streaming its reply. No chunk boundary is assumed to
// be a syntactically safe place to classify a token: a run of backticks may
// open or close a code span or a fenced block depending on input that has
// not arrived yet. The converter commits exactly the prefix whose
// classification is already settled and holds back the undecided suffix
// until the next chunk, or until the stream ends.
//
// Core properties:
//   - Committed output is never retracted, revised, or duplicated
//   - Splitting the input at any byte boundary does not change the output
//   - Malformed or unbalanced markup degrades to literal pass-through
//   - Independent sessions for concurrently in-flight streams
//
// Streaming example:
//
//	reg := mdorg.NewRegistry()
//	sess := reg.Create("req-42")
//	for chunk := range producer {
//		if out := sess.Feed(chunk); out != "" {
//			render(out)
//		}
//	}
//	render(sess.Finalize())
//
// For whole documents use Convert, or Render to stream from an io.Reader:
//
//	err := mdorg.Render(mdorg.RenderRequest{
//		Reader: strings.NewReader("# Hello\n\nMarkdown in, Org out.\n"),
//		Writer: os.Stdout,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
package mdorg
