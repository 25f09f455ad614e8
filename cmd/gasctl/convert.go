package main

import (
	"fmt"

	"github.com/nando-os/ghost-gas/gas"
	"github.com/spf13/cobra"
)

func newConvertCmd() *cobra.Command {
	convertCmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert between hex wei, decimal wei and decimal gwei",
	}

	conversions := []struct {
		use   string
		short string
		fn    func(string) (string, error)
	}{
		{"hex-to-gwei [hex-wei]", "Hex wei to decimal gwei", gas.HexWeiToDecGwei},
		{"gwei-to-hex [gwei]", "Decimal gwei to hex wei (rounded half up)", gas.DecGweiToHexWei},
		{"dec-to-hex [integer]", "Decimal integer to hex", gas.DecimalToHex},
		{"hex-to-dec [hex]", "Hex integer to decimal", gas.HexToDecimal},
	}
	for _, c := range conversions {
		fn := c.fn
		convertCmd.AddCommand(&cobra.Command{
			Use:   c.use,
			Short: c.short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				out, err := fn(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			},
		})
	}
	return convertCmd
}
