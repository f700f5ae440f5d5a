// Package main hosts the dedup CLI entrypoint and command graph.
//
// The Cobra-based command tree resolves configuration, builds the run logger,
// and hands manifests to the resolver. It also surfaces the disposition
// journal, the WhatsApp timestamp patcher, and configuration scaffolding.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
