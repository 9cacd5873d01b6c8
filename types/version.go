package types

// Version is the canonical clipfrag version. The journal format version
// moves in lockstep with it.
const Version = "0.3.0"

// JournalFormat identifies the journal record layout written by this
// version.
const JournalFormat = "msgpack/v1"
