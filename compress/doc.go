// Package compress provides the second-stage compressors applied to serialized
// codec payloads.
//
// Sparse array codecs exploit the structure of the data (main value, runs,
// dictionaries). Their payloads are then optionally compressed with a
// general-purpose algorithm before being written after the header:
//
//  1. **Encoding**: a sparsa codec turns the array into a payload
//  2. **Compression**: a compress.Codec shrinks the payload further
//
// Supported algorithms:
//   - None: No compression (fastest, largest)
//   - Zstd: Best compression ratio, moderate speed
//   - S2: Balanced compression and speed
//   - LZ4: Fast decompression, moderate compression
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	compressed, err := codec.Compress(payload)
//	...
//	original, err := codec.Decompress(compressed)
//
// # Zstd Implementations
//
// Zstd uses the pure Go klauspost/compress encoder by default. Building with
// `-tags gozstd` and cgo enabled switches to the valyala/gozstd binding.
//
// # Thread Safety
//
// All built-in codecs are stateless values backed by pooled encoders and are
// safe for concurrent use.
package compress
