// Package specialization classifies acquisitions by how closely the
// acquirer's genre portfolio matched the acquired studio's.
//
// For each (publisher, developer, date) event both parties get a
// pre-acquisition portfolio: the developer's full history of games released
// strictly before the deal, and the publisher's games released in years up
// to and including the deal year, rebuilt per deal for serial acquirers.
// The score is the cosine similarity of the two genre-percentage vectors
// over the union genre space. Two classification policies run side by side:
// a fixed cutoff (similarity strictly above 0.5) and the sample median
// (similarity at or above the median of all surviving records). The
// comparators differ on purpose-preservation grounds; see FixedCutoff.
//
// Records with an undefined similarity (either party has a zero-norm
// portfolio) are dropped, never coerced. The crowdedness join is an inner
// join: events whose (developer top genre, acquisition year) pair has no
// index row are dropped too.
package specialization
