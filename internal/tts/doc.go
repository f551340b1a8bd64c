// Package tts synthesizes narration audio through the OpenAI speech API.
// Text over the per-request limit is split on paragraph and sentence
// boundaries and the resulting segments are joined losslessly with the
// encoder's concat demuxer.
package tts
