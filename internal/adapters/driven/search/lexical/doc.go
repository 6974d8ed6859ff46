// Package lexical provides a token-based Searcher over the fragment
// store. Scoring is the fraction of query tokens found in a fragment's
// content, project or topics, so results stay explainable without an
// index or an embedding model.
package lexical
