package consts

// Component ID space
const (
	// STARTING_GENERATED_COMPONENT_ID is the first component ID the generator
	// may hand out; everything below is reserved for fixed built-in components
	STARTING_GENERATED_COMPONENT_ID = 10000
	// INVALID_COMPONENT_ID is the sentinel for an unassigned component
	INVALID_COMPONENT_ID = 0
)

// Tunable Options
const (
	// DEFAULT_MAX_DYNAMIC_SUBOBJECTS is the default number of per-category
	// component ID sets reserved for each dynamically attachable subobject class
	DEFAULT_MAX_DYNAMIC_SUBOBJECTS = 3

	// SCHEMA_DATABASE_FILE_EXT is the file extension of the persisted schema database
	SCHEMA_DATABASE_FILE_EXT = ".sdb"
	// SCHEMA_FILE_EXT is the file extension of emitted schema source files
	SCHEMA_FILE_EXT = ".schema"

	// GENERATE_BATCH_SIZE is the number of discovered classes processed per
	// assignment batch during a full scan
	GENERATE_BATCH_SIZE = 100

	// ASYNC_JOB_QUEUE_MAXLEN is the maxium number of async jobs in one job queue
	ASYNC_JOB_QUEUE_MAXLEN = 1000
)

// Debug Options
const (
	// DEBUG_SCHEMA_GEN prints per-class assignment debug logs
	DEBUG_SCHEMA_GEN = false
	// DEBUG_SAVE_LOAD prints database save & load debug logs
	DEBUG_SAVE_LOAD = false
)
