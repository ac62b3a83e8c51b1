// orawatch is a command line tool that resolves Oracle targets, discovers their instances and
// plans the monitoring queries to run for each of them.
//
// Usage:
//
//	orawatch [OPTIONS] [target | sids]
//
// Targets:
//
//	-t, --targets=            File or folder of YAML files containing info on which
//	                          Oracle instances to monitor [$OW_TARGETS]
//	-g, --group=              Groups for filtering which targets to monitor [$OW_GROUP]
//	    --conn-kind=[ez|tns]  Preferred connection string grammar (default: ez) [$OW_CONN_KIND]
//	    --connect-timeout=    Timeout for opening a single connection (default: 5s)
//	    --connect-retries=    How many times to retry a failed connection (default: 3)
//
// Sections:
//
//	-s, --sections=           File or folder of YAML files with section definitions [$OW_SECTIONS]
//	    --section=            Sections to plan, in order [$OW_SECTION]
//	    --sql-dir=            Folder with <section>.sql files overriding the built-in SQL [$OW_SQL_DIR]
//	    --bind=               Bind parameter as name=value
//
// Planner:
//
//	--max-parallel-spots= Number of spots opened and planned concurrently (default: 8)
//	--instance=           Plan only these instances [$OW_INSTANCE]
//	--pmon-pattern=       Regular expression matching PMON process names [$OW_PMON_PATTERN]
//	--interval=           Repeat planning with this interval until stopped (default: 0s) [$OW_INTERVAL]
//	--check-local         Warn about configured SIDs without a PMON process on this host
//
// Sinks:
//
//	--sink=               URI where planning results will be published: stdout://,
//	                      jsonfile://<path>, promfile://<path>,
//	                      prometheus://<addr>[/<namespace>] (needs --interval) (default: stdout://)
//
// Logging:
//
//	--log-level=[debug|info|warn|error] Verbosity level for stderr and file logging (default: info)
//	--log-file=           If specified, additionally write logs to the provided file
//
// Available commands:
//
//	target   Inspect configured targets (list, connstr)
//	sids     List SIDs of Oracle instances running on this host
package main
