package engine

// Plan partitions files into consecutive batches of chunkSize, numbered from
// start. The last batch may be short. Plan does not touch the filesystem.
// A chunkSize below 1 means DefaultChunkSize.
func Plan(files []LooseFile, start, chunkSize int) []Batch {
	if chunkSize < 1 {
		chunkSize = DefaultChunkSize
	}
	if len(files) == 0 {
		return nil
	}

	batches := make([]Batch, 0, (len(files)+chunkSize-1)/chunkSize)
	index := start
	for offset := 0; offset < len(files); offset += chunkSize {
		end := min(offset+chunkSize, len(files))
		batches = append(batches, Batch{
			Index: index,
			Name:  FolderName(index),
			Files: files[offset:end:end],
		})
		index++
	}
	return batches
}
