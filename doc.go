// Package pilha is the composition root for the pilha stack-of-notes tool.
//
// It connects the read-side queries (package query) with the file-backed
// stack store (package fs) and the output formats (package output).
//
// A stack is a named, push-ordered list of items; the most recent item is
// the top, shown as "Now". Queries never modify a stack: they load a full
// snapshot, select a window of it and render rows.
//
// Usage:
//
//	repo, err := pilha.Open("./stacks", pilha.WithStorage("yaml"))
//	if err != nil {
//		return err
//	}
//
//	format, _ := output.Parse("json")
//	term, err := pilha.Run(ctx, repo, query.Head{Stack: "todo"}, format, os.Stdout)
package pilha
