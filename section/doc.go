// Package section defines the fixed-size header that leads a serialized codec.
//
// A serialized codec is a 32-byte header followed by the codec payload:
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Header (32 bytes, fixed)                                │
//	│  - Flag (2 bytes): magic number and endianness          │
//	│  - Mode, Dimension, Compression (1 byte each)           │
//	│  - Reserved (3 bytes)                                   │
//	│  - Rows, Cols (4 bytes each)                            │
//	│  - Fingerprint (8 bytes): xxHash64 of the input array   │
//	│  - PayloadLength, RawPayloadLength (4 bytes each)       │
//	├─────────────────────────────────────────────────────────┤
//	│ Payload (PayloadLength bytes)                           │
//	│  - Codec-specific, length-prefixed uint32 fields        │
//	│  - Compressed with the header's compression type        │
//	└─────────────────────────────────────────────────────────┘
//
// The flag word is always little-endian; every other multi-byte field uses the
// byte order selected by the flag's endianness bit.
package section
