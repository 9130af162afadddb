package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/udisondev/regionflags/internal/db"
	"github.com/udisondev/regionflags/internal/region"
)

func defineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "define <region>",
		Short: "Start tracking flags for a region",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(store *region.Store) error {
				if err := store.Define(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Region %s has been defined.\n", args[0])
				return nil
			})
		},
	}
}

func flagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flag",
		Short: "Set or clear a region flag",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set <region> <flag>",
		Short: "Set a flag",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return changeFlag(cmd, args[0], args[1], true)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear <region> <flag>",
		Short: "Clear a flag",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return changeFlag(cmd, args[0], args[1], false)
		},
	})
	return cmd
}

func changeFlag(cmd *cobra.Command, name, flagName string, set bool) error {
	ctx := cmd.Context()
	flag, err := region.ParseFlag(flagName)
	if err != nil {
		return err
	}
	return withStore(ctx, func(store *region.Store) error {
		if set {
			if err := store.SetFlag(ctx, name, flag); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Region %s now has flag %s.\n", name, flag)
			return nil
		}
		if err := store.ClearFlag(ctx, name, flag); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Flag %s has been removed from region %s.\n", flag, name)
		return nil
	})
}

func damageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "damage <region> <dps>",
		Short: "Set damage per second dealt to players in a region",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rate, err := parseRate(args[1])
			if err != nil {
				return err
			}
			return withStore(cmd.Context(), func(store *region.Store) error {
				if err := store.SetDamageRate(cmd.Context(), args[0], rate); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "DPS for %s is now %d\n", args[0], rate)
				return nil
			})
		},
	}
}

func healCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "heal <region> <seconds>",
		Short: "Set seconds between heals in a region, 0 disables",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, err := parseRate(args[1])
			if err != nil {
				return err
			}
			return withStore(cmd.Context(), func(store *region.Store) error {
				if err := store.SetHealRate(cmd.Context(), args[0], seconds); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Heal interval for %s is now %ds\n", args[0], seconds)
				return nil
			})
		},
	}
}

func banCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ban <region> <item>",
		Short: "Forbid dropping an item in a region",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(store *region.Store) error {
				if err := store.BanItem(cmd.Context(), args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Item %s is now banned in %s.\n", args[1], args[0])
				return nil
			})
		},
	}
}

func unbanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unban <region> <item>",
		Short: "Allow dropping an item in a region again",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(store *region.Store) error {
				if err := store.UnbanItem(cmd.Context(), args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Item %s is no longer banned in %s.\n", args[1], args[0])
				return nil
			})
		},
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List defined regions and their configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(store *region.Store) error {
				configs := store.All()
				if len(configs) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No regions defined.")
					return nil
				}
				for _, c := range configs {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\tflags=%s\tdamage=%d/s\theal=every %ds\tbanned=%s\n",
						c.Name, c.Flags, c.DamagePerSecond, c.HealInterval, strings.Join(c.BannedItems, ","))
				}
				return nil
			})
		},
	}
}

func flagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "flags",
		Short: "Print the known flag names",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(region.FlagNames(), ", "))
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the regions table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			storage, err := db.Open(cmd.Context(), cfg.StorageType, cfg.StorageDSN())
			if err != nil {
				return err
			}
			storage.Close()
			fmt.Fprintf(cmd.OutOrStdout(), "Schema is up to date (%s).\n", cfg.StorageType)
			return nil
		},
	}
}

func parseRate(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%q: want a non-negative whole number", s)
	}
	return int32(v), nil
}
