// Package formats provides codecs for Quake-era model assets.
package formats

// Note: MDL (poly model) decoding is in mdl.go
// Note: vertex unpacking and triangle assembly are in reconstruct.go
// Note: LBM (IFF FORM PBM) skins are in lbm.go
// Note: Alias TRI meshes are in tri.go
