// Package codecs provides the payload codec used by clients and workers.
// Parsed trees and rendered blocks can be large, so payloads are zlib
// compressed whenever that makes them smaller.
package codecs

import "go.temporal.io/sdk/converter"

// DataConverter wraps the default converter with zlib compression.
func DataConverter() converter.DataConverter {
	return converter.NewCodecDataConverter(
		converter.GetDefaultDataConverter(),
		converter.NewZlibCodec(converter.ZlibCodecOptions{}),
	)
}
