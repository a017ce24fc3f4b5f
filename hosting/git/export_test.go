package git

// PlainInitForTest exposes plainInit.
var PlainInitForTest = plainInit
