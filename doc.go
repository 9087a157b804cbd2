/*
Package trie packs a collection of strings that share prefixes into a compact
text encoding and unpacks it again. Strings are inserted into a prefix tree
that counts duplicates, and the tree is written out level by level, each
node's children followed by a ';' delimiter. A terminal node carries its
multiplicity in brackets, so "car", "card" and "carpet" encode as

	c;a;r[1];d[1]p;;e;t[1];;

The decoder rebuilds the same tree by replaying the breadth-first order and
expands it depth first, returning every string as many times as it was
inserted.
*/
package trie
