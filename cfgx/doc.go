// Package cfgx is the typed build pipeline behind config.Build.
//
// A build runs three stages over a raw key/value input: a chain of named
// preprocessors that rewrite the map, a mapstructure decode into the target
// type, and an optional validator. Failures carry the stage that produced them
// as a *StageError wrapping one of ErrPreprocess, ErrDecode or ErrValidate.
//
// Option catalog:
//   - Preprocessing: WithStage.
//   - Decoder behavior: WithWeakTyping, WithTagName, WithMatchName.
//   - Validation: WithValidator.
package cfgx
