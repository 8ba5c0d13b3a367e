// Package nlp turns a free-text question into structured signals: catalog
// entities mentioned in it, narrative intents, an explicit chapter number and,
// as a last resort, the most similar event by word overlap.
//
// Everything here is pure and safe for concurrent use once constructed.
package nlp
