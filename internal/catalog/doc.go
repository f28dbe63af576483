// Package catalog models the three-level JSON catalog that describes
// downloadable SDK packages: L1 lists product categories and their product
// lines, L2 lists releases per product line, and L3 holds the actual
// sections/groups/components tree whose component versions carry download
// files with checksums. All three levels are plain data lookup; they are
// fetched through the revalidating HTTP cache and decoded from JSON, and
// relative URLs are resolved against the level that referenced them.
package catalog
