// Package skein implements the Skein family of cryptographic hash
// functions: skein256, skein512 and skein1024 each wrap a
// Threefish tweakable block cipher of the matching state size, driven
// through Unique Block Iteration (UBI) chaining across configuration,
// message and output passes. All three produce digests of any positive
// multiple of 8 bits, not just their natural state size.
//
// This root package only documents the family; use the skein256,
// skein512 or skein1024 subpackage directly.
package skein
