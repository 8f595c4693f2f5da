// Package bucket defines access to the object store holding the restoration
// archive.
//
// Object names are slash-separated paths such as
// "2019AB22_Venezia_Pala/RES_scheda.pdf". Implementations live in
// subpackages: oci for Oracle Cloud Object Storage and local for a directory
// tree standing in for a bucket.
package bucket
