package chunker

import "unicode/utf8"

// Stats summarizes a chunk list in characters.
type Stats struct {
	TotalChunks     int `json:"total_chunks"`
	TotalCharacters int `json:"total_characters"`
	AverageSize     int `json:"average_chunk_size"`
	MinSize         int `json:"min_chunk_size"`
	MaxSize         int `json:"max_chunk_size"`
	EstimatedTokens int `json:"estimated_tokens"`
}

func ComputeStats(chunks []string) Stats {
	if len(chunks) == 0 {
		return Stats{}
	}

	st := Stats{TotalChunks: len(chunks)}
	for i, c := range chunks {
		n := utf8.RuneCountInString(c)
		st.TotalCharacters += n
		st.EstimatedTokens += EstimateTokens(c)
		if i == 0 || n < st.MinSize {
			st.MinSize = n
		}
		if n > st.MaxSize {
			st.MaxSize = n
		}
	}
	st.AverageSize = st.TotalCharacters / len(chunks)
	return st
}
