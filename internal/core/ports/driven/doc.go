// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - KnowledgeStore: Persisted forum posts and course content
//
// # Optional Interfaces
//
// These can be nil - the pipeline degrades gracefully:
//
//   - CompletionService: Language model text completion. Without it (or
//     when the call fails) the answer degrades to a static fallback.
//   - OCRService: Image-to-text extraction. Without it, image attachments
//     are ignored.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
