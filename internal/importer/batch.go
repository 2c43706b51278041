package importer

// DefaultBlockSize bounds how many records are sent to the enrichment
// service in one request, keeping prompts inside the model's token budget.
const DefaultBlockSize = 50

// Chunk splits records into contiguous blocks of at most size elements,
// preserving order. The last block may be shorter. A non-positive size
// falls back to DefaultBlockSize. The blocks are subslices of the input;
// concatenating them yields the input exactly.
func Chunk(records []Record, size int) [][]Record {
	if size <= 0 {
		size = DefaultBlockSize
	}
	if len(records) == 0 {
		return nil
	}

	blocks := make([][]Record, 0, (len(records)+size-1)/size)
	for start := 0; start < len(records); start += size {
		end := start + size
		if end > len(records) {
			end = len(records)
		}
		blocks = append(blocks, records[start:end])
	}
	return blocks
}
