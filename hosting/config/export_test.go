package config

var SyncDirForTest = syncDir
