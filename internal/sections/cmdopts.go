package sections

// CmdOpts specifies the section related command-line options
type CmdOpts struct {
	Sections string   `short:"s" long:"sections" mapstructure:"sections" description:"File or folder of YAML files with section definitions. Built-in sections are used if empty" env:"OW_SECTIONS"`
	Names    []string `long:"section" mapstructure:"section" description:"Sections to plan, in order. All sections if not given" env:"OW_SECTION" env-delim:","`
	SQLDir   string   `long:"sql-dir" mapstructure:"sql-dir" description:"Folder with <section>.sql files overriding the built-in SQL" env:"OW_SQL_DIR"`
	Binds    []string `long:"bind" mapstructure:"bind" description:"Bind parameter as name=value, passed to statements referencing :name"`
}

func (c CmdOpts) BindParams() ([]BindParam, error) {
	params := make([]BindParam, 0, len(c.Binds))
	for _, b := range c.Binds {
		p, err := ParseBindParam(b)
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	return params, nil
}
