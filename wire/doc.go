// Package wire persists a compressed codec as a self-describing byte slice.
//
// A serialized codec is a fixed section.Header followed by the codec's payload,
// optionally compressed with one of the compress package algorithms:
//
//	c := codec.NewDictionary()
//	if err := c.Compress(input); err != nil {
//	    return err
//	}
//	data, err := wire.Marshal(c, wire.WithCompression(format.CompressionZstd))
//	...
//	restored, err := wire.Unmarshal(data)
//	out, err := restored.Decompress() // verified against the header fingerprint
//
// There is no format version field; the header magic number identifies the
// layout.
package wire
