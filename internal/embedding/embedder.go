package embedding

import (
	"hash/fnv"
	"math"
	"sort"
	"strings"
	"unicode"
)

// Dim is the fixed dimension of every embedding vector produced here and of
// every vector stored in the shared job-embedding store.
const Dim = 64

// EmbedText produces a deterministic embedding of free text using signed
// feature hashing over lowercase alphanumeric tokens, L2-normalized. Empty
// or token-free text yields the zero vector.
func EmbedText(text string) []float64 {
	vec := make([]float64, Dim)
	for _, token := range tokenize(text) {
		h := fnv.New64a()
		h.Write([]byte(token))
		sum := h.Sum64()
		bucket := int(sum % Dim)
		if sum&(1<<63) != 0 {
			vec[bucket] -= 1
		} else {
			vec[bucket] += 1
		}
	}
	return normalize(vec)
}

// EmbedSkills embeds a skill set. The set is normalized and sorted first so
// that equal sets always produce identical vectors regardless of input
// order. Candidate embeddings are never cached; callers may pass
// hypothetical sets.
func EmbedSkills(skills []string) []float64 {
	normalized := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, s := range skills {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		normalized = append(normalized, key)
	}
	sort.Strings(normalized)
	return EmbedText(strings.Join(normalized, " "))
}

// CosineSimilarity returns the cosine similarity of two vectors clamped to
// [0,1]. A zero vector on either side yields exactly 0, never NaN.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if sim < 0 {
		return 0
	}
	if sim > 1 {
		return 1
	}
	return sim
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func normalize(vec []float64) []float64 {
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	if sum == 0 {
		return vec
	}
	norm := math.Sqrt(sum)
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}
