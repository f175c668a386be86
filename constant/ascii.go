package constant

// AsciiArtLogo is the stylized banner rendered on the root help screen.
const AsciiArtLogo = `
  ___                                    _
 / _|_ _ __ _ _ __  ___ _ __  ___ ___ __| |__
|  _| '_/ _' | '  \/ -_) '_ \/ -_) -_) / / /
|_| |_| \__,_|_|_|_\___| .__/\___\___|_\_\_\
                       |_|`
