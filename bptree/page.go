package bptree

// pageSize is the fixed size of every on-disk index page, grounded on
// pranavdb/page/pageStruct.go's IndexPage.
const pageSize = 4096

// headerPageMagic tags page 0 as the tree's file header, grounded on
// pranavdb/index/indexFile.go's FileHeader.MagicNumber convention.
const headerPageMagic = 0x42504c55 // "BPLU"
