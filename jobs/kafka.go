// Optional posting of the enriched rows to a Kafka broker, for sites that feed the reporting
// pipeline that way.  Topic naming follows the ingest convention, <cluster>.<data-tag>.

package jobs

import (
	"context"
	"encoding/json"

	"github.com/NordicHPC/sonar/util/formats/newfmt"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/uoracs/process-job-stats/attrib"
	. "github.com/uoracs/process-job-stats/common"
)

func postRowsToKafka(broker, cluster string, rows []*attrib.Row, verbose bool) error {
	cl, err := kgo.NewClient(kgo.SeedBrokers(broker))
	if err != nil {
		return err
	}
	defer cl.Close()

	topic := cluster + "." + string(newfmt.DataTagJobs)
	records := make([]*kgo.Record, 0, len(rows))
	for _, row := range rows {
		value, err := json.Marshal(row)
		if err != nil {
			return err
		}
		records = append(records, &kgo.Record{
			Topic: topic,
			Key:   []byte(row.JobID),
			Value: value,
		})
	}
	if verbose {
		Log.Infof("Posting %d records to %s at %s", len(records), topic, broker)
	}
	return cl.ProduceSync(context.Background(), records...).FirstErr()
}
