// Kinographus - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinographus

package recommend

import "math"

// tfidfMatrix converts tokenized documents into L2-normalized TF-IDF row
// vectors over a shared vocabulary.
//
// Weighting follows the conventional smoothed formulation: raw term counts
// multiplied by idf = ln((1+n)/(1+df)) + 1, where n is the document count
// and df the number of documents containing the term. Because every row is
// L2-normalized, cosine similarity between two documents reduces to the dot
// product of their rows.
func tfidfMatrix(docs [][]string) [][]float64 {
	vocab := make(map[string]int)
	docFreq := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool, len(doc))
		for _, term := range doc {
			if _, ok := vocab[term]; !ok {
				vocab[term] = len(vocab)
			}
			if !seen[term] {
				docFreq[term]++
				seen[term] = true
			}
		}
	}

	idf := make([]float64, len(vocab))
	n := float64(len(docs))
	for term, col := range vocab {
		idf[col] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	rows := make([][]float64, len(docs))
	for i, doc := range docs {
		row := make([]float64, len(vocab))
		for _, term := range doc {
			row[vocab[term]] += idf[vocab[term]]
		}
		normalizeL2(row)
		rows[i] = row
	}
	return rows
}

// normalizeL2 scales the vector to unit Euclidean length in place.
// Zero vectors are left untouched.
func normalizeL2(v []float64) {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range v {
		v[i] /= norm
	}
}

// dot returns the inner product of two equal-length vectors.
func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

// cosineSimilarity computes cosine similarity between two vectors.
// Returns 0 when either vector has zero norm.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
