// Package actions implements the three CLI verbs. Show prints catalog
// metadata for the selected sections/groups/components, Fetch pulls every
// selected download file through the revalidating HTTP cache, and Verify
// checks cached files against their catalog checksums. Selection expansion
// mirrors the catalog structure: sections expand to groups, groups to their
// first version's components, plus any components named directly.
package actions
