// Package corpus holds the seed corpus of a fuzz campaign: a bounded FIFO
// queue of expression strings, the loader for seed directories and the
// snapshot format used to carry a grown corpus between campaigns.
//
// Seeds are opaque strings. The queue never tracks structure; equality is
// plain string equality.
package corpus
